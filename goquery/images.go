package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// ExtractVehicleImages scans the whole page for vehicle imagery and returns
// a map from model image key (see cardeals.ModelImageKey) to absolute image
// URL. Generative extraction can't see images, so its candidates get theirs
// attached from this map afterwards.
func ExtractVehicleImages(html, baseURL string) (map[string]string, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	keyed := make(map[string]string)
	sanitize := strings.NewReplacer(" ", "", "-", "", "_", "")

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		if tinyImage(img) {
			return
		}

		alt, _ := img.Attr("alt")
		title, _ := img.Attr("title")
		haystack := sanitize.Replace(strings.ToLower(src + " " + alt + " " + title))

		resolved := resolveURL(baseURL, src)
		lowerSrc := strings.ToLower(src)

		for _, model := range cardeals.AllModels() {
			key := cardeals.ModelImageKey(model)
			if !strings.Contains(haystack, key) {
				continue
			}
			// First match wins unless a later one is flagged as a larger
			// rendition.
			if _, seen := keyed[key]; !seen ||
				strings.Contains(lowerSrc, "large") || strings.Contains(lowerSrc, "full") {
				keyed[key] = resolved
			}
		}
	})

	return keyed, nil
}

// tinyImage reports whether the img declares dimensions small enough to be
// an icon or tracking pixel. Missing or unparseable dimensions pass.
func tinyImage(img *goquery.Selection) bool {
	w, wok := img.Attr("width")
	h, hok := img.Attr("height")
	if !wok || !hok {
		return false
	}
	wv, werr := strconv.Atoi(strings.TrimSpace(w))
	hv, herr := strconv.Atoi(strings.TrimSpace(h))
	if werr != nil || herr != nil {
		return false
	}
	return wv < 100 || hv < 100
}
