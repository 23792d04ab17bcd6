package dto

import "time"

// TodoResponse is the JSON shape of a todo. file_url is derived from
// file_name and omitted entirely when there is no attachment.
type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	FileName    *string   `json:"file_name"`
	CreatedAt   time.Time `json:"created_at"`
	FileURL     *string   `json:"file_url,omitempty"`
}
