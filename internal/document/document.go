package document

// Reason explains which reading method produced (or failed to produce) the
// text of a document.
type Reason string

const (
	ReasonNativeText  Reason = "native-text"
	ReasonOCR         Reason = "ocr"
	ReasonOCRFailed   Reason = "ocr-failed"
	ReasonUnsupported Reason = "unsupported-format"
	ReasonError       Reason = "error"
)

// ReadResult is the immutable output of text acquisition for one document.
// Confidence reflects the reading method: native text extraction is 1.0, OCR
// is a heuristic scaled by the number of non-empty pages, unreadable is 0.0.
type ReadResult struct {
	Text       string
	Confidence float64
	Reason     Reason
}

// Empty reports whether acquisition produced no usable text.
func (r ReadResult) Empty() bool {
	return len(r.Text) == 0
}

// Config holds the external tool settings for PDF reading and OCR. Zero
// values fall back to the package defaults.
type Config struct {
	Pdftotext string
	Pdftoppm  string
	Tesseract string
	// DPI used when rasterizing PDF pages for OCR.
	DPI int
	// MaxPages caps the number of pages rendered for OCR.
	MaxPages int
}

const (
	defaultDPI      = 300
	defaultMaxPages = 8
)

func (c Config) withDefaults() Config {
	if c.Pdftotext == "" {
		c.Pdftotext = "pdftotext"
	}
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.DPI <= 0 {
		c.DPI = defaultDPI
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	return c
}

// OCRConfidence is the heuristic confidence for OCR-derived text, scaled by
// how many rendered pages yielded any text at all.
func OCRConfidence(nonEmptyPages int) float64 {
	conf := 0.25 + 0.1*float64(nonEmptyPages)
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}
