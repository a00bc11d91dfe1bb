package models

import "fmt"

// Upload is image data picked locally and not yet sent to the Gateway.
type Upload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Image is the value of an image field: a path the Gateway already stores,
// or a pending Upload that replaces it on the next save.
type Image struct {
	Path   string
	Upload *Upload
}

func StoredImage(path string) Image {
	return Image{Path: path}
}

func PendingImage(u Upload) Image {
	return Image{Upload: &u}
}

// Pending reports whether the image carries unsubmitted data.
func (i Image) Pending() bool {
	return i.Upload != nil
}

func (i Image) Empty() bool {
	return i.Upload == nil && i.Path == ""
}

func (i Image) Clone() Image {
	if i.Upload == nil {
		return i
	}
	u := *i.Upload
	u.Data = append([]byte(nil), i.Upload.Data...)
	return Image{Path: i.Path, Upload: &u}
}

func (i Image) String() string {
	if i.Upload != nil {
		return fmt.Sprintf("<upload %s, %d bytes>", i.Upload.Filename, len(i.Upload.Data))
	}
	return i.Path
}
