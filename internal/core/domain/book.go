package domain

// Book is a catalog entry. ID is the store-generated identifier and is
// exposed as "_id" to stay compatible with existing clients.
type Book struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
