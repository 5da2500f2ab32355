// Package knowledge implements the studio knowledge base: a small catalog of
// heterogeneous records ranked by keyword relevance for the in-app assistant.
package knowledge

// Kind discriminates the knowledge item union.
type Kind string

// Knowledge item kinds.
const (
	KindTopic  Kind = "topic"
	KindPage   Kind = "page"
	KindPerson Kind = "person"
	KindProof  Kind = "proof"
	KindAction Kind = "action"
	KindBlog   Kind = "blog"
	KindSocial Kind = "social"
)

// Item is one knowledge base record. Label is the kind-specific primary
// field (a person's name, a page title, an action verb phrase, ...).
type Item struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// Valid reports whether the kind is one of the declared union members.
func (k Kind) Valid() bool {
	switch k {
	case KindTopic, KindPage, KindPerson, KindProof, KindAction, KindBlog, KindSocial:
		return true
	default:
		return false
	}
}
