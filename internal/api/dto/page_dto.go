package dto

// PageResponse 分頁查詢共用回應
type PageResponse[T any] struct {
	Count int64 `json:"count"`
	Items []T   `json:"items"`
}
