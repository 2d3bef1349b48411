package model

// A Draft is a locally persisted snapshot of the editor content,
// independent of the remote document store.
type Draft struct {
	Base `storm:"inline"`

	Title   string `json:"title" storm:"index"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}
