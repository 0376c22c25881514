package api

import (
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Photo is one gallery entry derived from a stored object.
type Photo struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	FileType     string    `json:"fileType"`
	URL          string    `json:"url"`
	FileSize     int64     `json:"fileSize"`
	LastModified time.Time `json:"lastModified"`
}

// The listing is bounded to one page; a wedding gallery never gets close
const maxPhotoKeys = 1000

// PhotoList returns every uploaded photo newest first. The folder marker
// object and anything zero-byte are filtered out, and the MIME type is
// derived from the file extension since the bucket doesn't store one.
func (a *API) PhotoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	out, err := a.S3.ListObjectsV2(c.Request.Context(), &s3.ListObjectsV2Input{
		Bucket:  aws.String(a.Bucket),
		Prefix:  aws.String(photoPrefix),
		MaxKeys: aws.Int32(maxPhotoKeys),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "사진 목록을 가져오는데 실패했습니다.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list photos", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	photos := make([]Photo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		size := aws.ToInt64(obj.Size)

		if key == photoPrefix || size == 0 {
			continue
		}

		photos = append(photos, Photo{
			ID:           key,
			FileName:     strings.TrimPrefix(key, photoPrefix),
			FileType:     mimeFromExt(key),
			URL:          a.photoURL(key),
			FileSize:     size,
			LastModified: aws.ToTime(obj.LastModified),
		})
	}

	sort.Slice(photos, func(i, j int) bool {
		return photos[i].LastModified.After(photos[j].LastModified)
	})

	c.JSON(http.StatusOK, photos)
}

// mimeFromExt maps a file extension to a MIME type using the same fixed
// table the gallery frontend expects.
func mimeFromExt(key string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))

	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png", "gif", "webp":
		return "image/" + ext
	case "mp4", "mov", "avi", "webm":
		return "video/" + ext
	default:
		return "application/octet-stream"
	}
}
