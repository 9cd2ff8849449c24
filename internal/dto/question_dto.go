package dto

type AskRequest struct {
	Question    string   `json:"question" validate:"required"`
	Model       string   `json:"model"`
	Folder      string   `json:"folder"`
	DocumentIds []string `json:"document_ids"`
}

type AskResponse struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	DocumentIds []string `json:"document_ids,omitempty"`
	Model       string   `json:"model"`
}
