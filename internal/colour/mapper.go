package colour

// Result is the colour derived for a word.
type Result struct {
	Word string `json:"word"`
	Mode Mode   `json:"mode"`
	Hash uint32 `json:"hash"`
	Hex  string `json:"hex"`
	RGB  RGB    `json:"rgb"`
	HSL  HSL    `json:"hsl"`
}

// ColorFor maps word to its colour under mode. The word is used as given;
// callers trim surrounding whitespace.
func ColorFor(word string, mode Mode) Result {
	hash := Hash(word)
	rgb := HashToColor(hash, mode.Enhancer())

	return Result{
		Word: word,
		Mode: Mode(mode.Enhancer().Name()),
		Hash: hash,
		Hex:  rgb.Hex(),
		RGB:  rgb,
		HSL:  rgb.HSL(),
	}
}
