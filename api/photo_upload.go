package api

import (
	"errors"
	"net/http"
	"path"
	"time"

	"minhyuk/wedding-api/attendance"
	"minhyuk/wedding-api/sheets"
	"minhyuk/wedding-api/util"
	"minhyuk/wedding-api/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// photoPrefix is the folder every guest upload lands under.
const photoPrefix = "attendance/"

// Files above this size go through the multipart uploader
const multipartLimit = 100 << 20

// PhotoUpload stores a guest photo or video in the bucket and appends a
// metadata row to the sheet. The object write is the source of truth: once
// it succeeds the upload is a success, even if the metadata row fails.
func (a *API) PhotoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "파일이 없습니다.",
			"requestID": requestID,
		})
		return
	}

	uploaderName := c.PostForm("uploaderName")
	if uploaderName == "" {
		uploaderName = attendance.Anonymous
	}

	code, f, err := validators.MediaValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.String("requestID", requestID), zap.Error(err))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	now := time.Now().In(kst)
	key := photoPrefix + now.Format("20060102150405") + "-" + util.RandStr(6) + path.Ext(fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	ctx := c.Request.Context()

	if fh.Size > multipartLimit {
		u := manager.NewUploader(a.S3, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 5 << 20
		})

		_, err = u.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.Bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentType),
		})
	} else {
		_, err = a.S3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(a.Bucket),
			Key:           aws.String(key),
			Body:          f,
			ContentLength: &fh.Size,
			ContentType:   aws.String(contentType),
		})
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "파일 업로드에 실패했습니다.",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload file to S3", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	url := a.photoURL(key)

	// Metadata is best-effort: the object is already stored and the gallery
	// lists the bucket, not the sheet
	err = a.Sheets.AppendRowPreferring(ctx, sheets.PhotoSheet, []string{
		now.Format(timestampLayout),
		uploaderName,
		fh.Filename,
		contentType,
		url,
		util.HumanSize(fh.Size),
	})
	if err != nil {
		zap.L().Warn("Failed to append photo metadata row",
			zap.String("requestID", requestID),
			zap.String("key", key),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      url,
		"fileName": fh.Filename,
		"fileSize": fh.Size,
	})
}

// photoURL builds the public URL for a stored object, preferring the CDN
// domain when one is configured.
func (a *API) photoURL(key string) string {
	if domain := viper.GetString("cdn.domain"); domain != "" {
		return "https://" + domain + "/" + key
	}
	return "https://" + a.Bucket + ".s3." + viper.GetString("aws.region") + ".amazonaws.com/" + key
}
