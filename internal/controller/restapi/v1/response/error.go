package response

type Error struct {
	Error string `json:"error" example:"record not found"`
}
