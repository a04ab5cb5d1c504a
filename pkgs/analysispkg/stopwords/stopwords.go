package stopwords

import (
	_ "embed"
	"strings"
	"sync"
)

// english.txt is the NLTK english corpus, one lower-case word per line
//
//go:embed english.txt
var englishRaw string

var (
	englishOnce sync.Once
	englishSet  map[string]struct{}
)

// English returns the shared english stop-word set. Callers must not modify it.
func English() map[string]struct{} {
	englishOnce.Do(func() {
		englishSet = parse(englishRaw)
	})
	return englishSet
}

func IsEnglish(word string) bool {
	_, ok := English()[word]
	return ok
}

func parse(raw string) map[string]struct{} {
	set := make(map[string]struct{}, 200)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	return set
}
