package document

// Sentinels substituted when a preview lacks a heading or a qualifying link.
const (
	TitleNotFound = "Title Not Found"
	LinkNotFound  = "Link Not Found"
)

// Article represents one post preview read from the listing page.
// Number is the 1-based position of the preview in the snapshot it came from.
type Article struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}
