package domain

// Accessors shared by every entity the visibility layer can see. The owner
// field differs per concept (author, user, owner); these normalize it.

func (p Post) ViewableID() ID    { return p.ID }
func (p Post) ViewableOwner() ID { return p.Author }

func (c Comment) ViewableID() ID    { return c.ID }
func (c Comment) ViewableOwner() ID { return c.Author }

func (d Datum) ViewableID() ID    { return d.ID }
func (d Datum) ViewableOwner() ID { return d.User }

func (c Competition) ViewableID() ID    { return c.ID }
func (c Competition) ViewableOwner() ID { return c.Owner }

// Memberships are visible when the member has linked the group itself, so
// the membership's "item" for link checks is the group id.
func (m Membership) ViewableID() ID    { return m.Group }
func (m Membership) ViewableOwner() ID { return m.User }
