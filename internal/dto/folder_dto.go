package dto

type ListFoldersResponse struct {
	Folders      []string `json:"folders"`
	MasterBucket string   `json:"master_bucket"`
}

type CreateFolderResponse struct {
	Message string `json:"message"`
	Folder  string `json:"folder"`
}
