package domain

type ctxKey string

// ViewerCtxKey carries the authenticated viewer id through a request
// context. Absent or empty means the request is anonymous.
const ViewerCtxKey ctxKey = "stride-viewer"
