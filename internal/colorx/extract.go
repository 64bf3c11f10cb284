package colorx

import "math/rand/v2"

// sampleColors is the fixed set the stub extractor draws from.
var sampleColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

// Extraction is the result of running color extraction over an upload.
type Extraction struct {
	DominantColor string   `json:"dominantColor"`
	Colors        []string `json:"colors"`
}

// ExtractColors is a stub: it returns 6 colors randomly shuffled from the
// fixed sample set instead of analysing pixel data, matching the behavior
// this service has always had. The upload path treats it as fallible so a
// real implementation can drop in without handler changes.
func ExtractColors(imagePath string) (Extraction, error) {
	shuffled := make([]string, len(sampleColors))
	copy(shuffled, sampleColors)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	selected := shuffled[:6]

	return Extraction{
		DominantColor: selected[0],
		Colors:        selected,
	}, nil
}
