package access

import "github.com/aussiebroadwan/bartabchat/internal/chat/domain"

// Identity is the principal behind one request. The zero value is the
// anonymous identity. It is resolved once and passed by value from the HTTP
// adapter into services.
type Identity struct {
	User  *domain.User
	Token string
}

var Anonymous = Identity{}

func (i Identity) Authenticated() bool { return i.User != nil }

func (i Identity) UserID() string {
	if i.User == nil {
		return ""
	}
	return i.User.ID
}

func (i Identity) IsSuperuser() bool { return i.User != nil && i.User.IsSuperuser }
