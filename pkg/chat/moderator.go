package chat

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Moderator scans chat messages against a word list and masks matches.
// It holds no per-player state; warning counts and mutes live on the client
// session.
type Moderator struct {
	patterns []pattern
}

type pattern struct {
	rx   *regexp.Regexp
	mask string
}

// New returns a moderator for the given word list. Blank entries are
// skipped. An empty list yields a moderator that flags nothing.
func New(words []string) *Moderator {
	m := &Moderator{}
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		m.patterns = append(m.patterns, pattern{
			rx:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word)),
			mask: strings.Repeat("*", utf8.RuneCountInString(word)),
		})
	}

	return m
}

// NewFromFile loads a moderator word list with one word per line.
// A missing or unreadable file logs a warning and disables moderation,
// matching the behavior of a missing resource at startup.
func NewFromFile(path string) *Moderator {
	file, err := os.Open(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("could not load word list; chat moderation disabled")
		return New(nil)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("could not read word list")
	}

	return New(words)
}

// Filter replaces every case-insensitive occurrence of each listed word with
// asterisks of equal length. The second return is true if anything matched.
func (m *Moderator) Filter(text string) (string, bool) {
	flagged := false
	for _, p := range m.patterns {
		if !p.rx.MatchString(text) {
			continue
		}

		flagged = true
		text = p.rx.ReplaceAllString(text, p.mask)
	}

	return text, flagged
}

// NumWords returns the number of listed words
func (m *Moderator) NumWords() int {
	return len(m.patterns)
}
