package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 报告导出格式
const (
	FormatHTML = "html"
	FormatPNG  = "png"
)

const (
	MimeHTML = "text/html; charset=utf-8"
	MimePNG  = "image/png"
)

// 分页默认值
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
