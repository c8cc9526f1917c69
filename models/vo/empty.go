package vo

// Empty 表示成功但无数据返回的响应体。
type Empty struct{}
