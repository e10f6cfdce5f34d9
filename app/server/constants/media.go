package constants

const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
)

const (
	MediaDefaultFolder  = "college-site/events"
	MediaMaxUploadBytes = 5 << 20 // 5 MiB
	MediaMaxDimension   = 1000
	MediaFormField      = "image"
)

var MediaAllowedFormats = []string{"jpg", "jpeg", "png", "gif", "webp"}
