package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"minhyuk/wedding-api/attendance"
)

// readRange covers the seven record columns below the header row. The sheet
// holds at most a few hundred guests, so a single bounded fetch is enough.
const readRange = "A2:G1000"

// PhotoSheet is the worksheet photo metadata rows prefer. When the sheet
// doesn't exist the first worksheet is used instead.
const PhotoSheet = "사진업로드"

// ReadRecords fetches every attendance row from the first worksheet and maps
// them positionally into records.
func (c *Client) ReadRecords(ctx context.Context) ([]attendance.Record, error) {
	id, err := sheetID()
	if err != nil {
		return nil, err
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	titles, err := c.Titles(ctx, token)
	if err != nil {
		return nil, err
	}

	var body struct {
		Values [][]string `json:"values"`
	}

	rangeRef := url.PathEscape(titles[0] + "!" + readRange)
	if err := c.get(ctx, token, c.BaseURL+"/"+id+"/values/"+rangeRef, &body); err != nil {
		return nil, fmt.Errorf("failed to fetch attendance rows, %w", err)
	}

	records := make([]attendance.Record, 0, len(body.Values))
	for _, row := range body.Values {
		records = append(records, attendance.FromRow(row))
	}
	return records, nil
}

// AppendRecord appends one attendance row to the first worksheet. Failures
// are surfaced to the caller; there is no retry and no partial success.
func (c *Client) AppendRecord(ctx context.Context, r attendance.Record) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	titles, err := c.Titles(ctx, token)
	if err != nil {
		return err
	}

	return c.appendRow(ctx, token, titles[0], r.Row())
}

// AppendRowPreferring appends a raw row to the named worksheet when it
// exists, else to the first worksheet.
func (c *Client) AppendRowPreferring(ctx context.Context, preferred string, row []string) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	titles, err := c.Titles(ctx, token)
	if err != nil {
		return err
	}

	target := titles[0]
	if slices.Contains(titles, preferred) {
		target = preferred
	}

	return c.appendRow(ctx, token, target, row)
}

func (c *Client) appendRow(ctx context.Context, token, title string, row []string) error {
	id, err := sheetID()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string][][]string{
		"values": {row},
	})
	if err != nil {
		return err
	}

	appendURL := c.BaseURL + "/" + id + "/values/" + url.PathEscape(title) + ":append?valueInputOption=RAW"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, appendURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("append call failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("append call returned status %s: %s", resp.Status, msg)
	}

	return nil
}
