package models

// NotFound is the explicit fallback for optional page fields that do not
// exist. It keeps "the tag is missing" distinguishable from "the probe
// failed".
const NotFound = "(not found)"

// PerformanceScores holds 0-100 category scores from the external audit
// service. A nil entry means the category was absent from the audit
// report, which is not the same thing as a zero score.
type PerformanceScores struct {
	Performance   *int `json:"performance"`
	SEO           *int `json:"seo"`
	Accessibility *int `json:"accessibility"`
	BestPractices *int `json:"bestPractices"`
	PWA           *int `json:"pwa"`
}

// BrokenLink is one anchor whose fetch did not succeed. Status is the HTTP
// status code when a response arrived; Error carries the transport error
// otherwise.
type BrokenLink struct {
	Link   string `json:"link"`
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BrokenLinksPayload lists the checked link count and every broken link.
type BrokenLinksPayload struct {
	Checked int          `json:"checked"`
	Broken  []BrokenLink `json:"broken"`
}

// ImageInfo describes one image element. Size is -1 when the image could
// not be fetched; the image is still listed.
type ImageInfo struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Size  int64  `json:"size"`
	Error string `json:"error,omitempty"`
}

// ImagesPayload lists every image plus the subset over the weight threshold.
type ImagesPayload struct {
	Images    []ImageInfo `json:"images"`
	Oversized []ImageInfo `json:"oversized"`
}

// FontFace is one entry of the page's loaded font-face set.
type FontFace struct {
	Family string `json:"family"`
	Status string `json:"status"`
}

// FontsPayload lists the page's web fonts. An empty list is a valid result.
type FontsPayload struct {
	Fonts []FontFace `json:"fonts"`
}

// SecurityHeadersPayload lists the missing security headers. Note carries
// the single explanatory entry for the cases where the headers could not
// be inspected at all (no response, no headers object, or an error).
type SecurityHeadersPayload struct {
	Missing []string `json:"missing"`
	Note    string   `json:"note,omitempty"`
}

// RedirectsPayload reports whether the first document response was a
// redirect. Only the Location header of that first hop is reported; the
// chain is not followed.
type RedirectsPayload struct {
	Redirected    bool   `json:"redirected"`
	Status        int    `json:"status,omitempty"`
	OriginalURL   string `json:"originalUrl,omitempty"`
	RedirectedURL string `json:"redirectedUrl,omitempty"`
}

// Asset is one captured CSS/JS resource.
type Asset struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// AssetsPayload lists captured CSS/JS resources plus the subset over the
// weight threshold. Error marks a capture that was cut short; the listed
// assets are then the partial set accumulated before the cut.
type AssetsPayload struct {
	Assets    []Asset `json:"assets"`
	Oversized []Asset `json:"oversized"`
	Error     string  `json:"error,omitempty"`
}

// MetadataPayload holds the page's basic SEO metadata. Each field falls
// back to NotFound independently.
type MetadataPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
}

// Cookie is one cookie from the session's jar. Expires is either the
// literal "Session" or an RFC 3339 timestamp.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Secure   bool   `json:"secure"`
	HTTPOnly bool   `json:"httpOnly"`
	Expires  string `json:"expires"`
}

// CookiesPayload lists the session's cookies.
type CookiesPayload struct {
	Cookies []Cookie `json:"cookies"`
}

// ThirdPartyPayload lists captured resource URLs that do not belong to the
// audited site's host.
type ThirdPartyPayload struct {
	Host      string   `json:"host"`
	Resources []string `json:"resources"`
}

// CarbonPayload is the carbon-impact provider's statistics object.
type CarbonPayload struct {
	URL         string           `json:"url"`
	Green       bool             `json:"green"`
	Bytes       int64            `json:"bytes"`
	CleanerThan float64          `json:"cleanerThan"`
	Statistics  CarbonStatistics `json:"statistics"`
}

// CarbonStatistics holds the per-visit figures of the carbon provider.
type CarbonStatistics struct {
	AdjustedBytes float64   `json:"adjustedBytes"`
	Energy        float64   `json:"energy"`
	CO2           CarbonCO2 `json:"co2"`
}

// CarbonCO2 splits the CO2 estimate by energy source.
type CarbonCO2 struct {
	Grid      CarbonFigures `json:"grid"`
	Renewable CarbonFigures `json:"renewable"`
}

// CarbonFigures are the provider's per-visit emission figures.
type CarbonFigures struct {
	Grams  float64 `json:"grams"`
	Litres float64 `json:"litres"`
}
