package partition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/Preprocessa/internal/core"
)

// Partitioning knobs mirrored from the hosted partition endpoint: running
// text is grouped into title-delimited chunks capped at maxCharacters,
// re-chunked after newAfterNChars, with small runs combined up to
// combineUnderNChars.
const (
	maxCharacters      = 4000
	newAfterNChars     = 3800
	combineUnderNChars = 2000
)

// UnstructuredPartitioner calls the hosted Unstructured partition API to
// decode a document into typed elements with inferred table structure.
// Rendered image blocks (figures and table snapshots) come back as base64
// payloads and are dumped into the run's working directory as .jpg files;
// the elements themselves stay payload-free.
type UnstructuredPartitioner struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewUnstructuredPartitioner(baseURL, apiKey string) *UnstructuredPartitioner {
	return &UnstructuredPartitioner{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// apiElement is the subset of the partition response the pipeline consumes.
type apiElement struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Metadata struct {
		TextAsHTML    string `json:"text_as_html"`
		ImageBase64   string `json:"image_base64"`
		ImageMimeType string `json:"image_mime_type"`
	} `json:"metadata"`
}

func (p *UnstructuredPartitioner) Partition(ctx context.Context, filePath string, imageDir string) ([]core.Element, error) {
	raw, err := p.call(ctx, filePath)
	if err != nil {
		return nil, err
	}

	var apiElements []apiElement
	if err := json.Unmarshal(raw, &apiElements); err != nil {
		return nil, fmt.Errorf("decode partition response: %w", err)
	}

	var elements []core.Element
	for _, el := range apiElements {
		if el.Metadata.ImageBase64 != "" {
			if err := writeImageBlock(imageDir, el.Metadata.ImageBase64); err != nil {
				return nil, err
			}
		}
		switch el.Type {
		case "Table":
			elements = append(elements, core.Element{Kind: core.ElementTable, HTML: el.Metadata.TextAsHTML})
		case "CompositeElement":
			elements = append(elements, core.Element{Kind: core.ElementText, Text: el.Text})
		case "Image":
			elements = append(elements, core.Element{Kind: core.ElementImage})
		}
	}
	return elements, nil
}

// call uploads the document to the partition endpoint as multipart form data.
func (p *UnstructuredPartitioner) call(ctx context.Context, filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	fields := map[string]string{
		"strategy":              "hi_res",
		"chunking_strategy":     "by_title",
		"max_characters":        fmt.Sprint(maxCharacters),
		"new_after_n_chars":     fmt.Sprint(newAfterNChars),
		"combine_under_n_chars": fmt.Sprint(combineUnderNChars),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, t := range []string{"Image", "Table"} {
		if err := mw.WriteField("extract_image_block_types", t); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/general/v0/general", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("unstructured-api-key", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("partition request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("partition request failed with %s: %s", resp.Status, msg)
	}
	return io.ReadAll(resp.Body)
}

// writeImageBlock decodes one base64 image payload into imageDir under an
// auto-generated .jpg name.
func writeImageBlock(imageDir, payload string) error {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decode image block: %w", err)
	}
	name := fmt.Sprintf("figure-%s.jpg", uuid.NewString())
	if err := os.WriteFile(filepath.Join(imageDir, name), data, 0o644); err != nil {
		return fmt.Errorf("write image block: %w", err)
	}
	return nil
}

var _ core.Partitioner = (*UnstructuredPartitioner)(nil)
