package legality

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
)

// Message keys double as the English text.
const (
	msgRepeat      = "Element %s is repeated"
	msgCrossRepeat = "Element %s was already performed in pass %d"
	msgTwistCap    = "Element %s may be performed at most %d times"
	msgLastSlot    = "Element %s may only close a pass on its final repetition"
)

var supported = []language.Tag{
	language.English,
	language.French,
	language.Dutch,
}

var matcher = language.NewMatcher(supported)

var translations = func() *xcatalog.Builder {
	b := xcatalog.NewBuilder(xcatalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(language.English, msgRepeat, msgRepeat)
	set(language.English, msgCrossRepeat, msgCrossRepeat)
	set(language.English, msgTwistCap, msgTwistCap)
	set(language.English, msgLastSlot, msgLastSlot)

	set(language.French, msgRepeat, "L'élément %s est répété")
	set(language.French, msgCrossRepeat, "L'élément %s a déjà été exécuté dans la série %d")
	set(language.French, msgTwistCap, "L'élément %s peut être exécuté au maximum %d fois")
	set(language.French, msgLastSlot, "L'élément %s ne peut terminer une série que lors de sa dernière répétition")

	set(language.Dutch, msgRepeat, "Element %s wordt herhaald")
	set(language.Dutch, msgCrossRepeat, "Element %s werd al uitgevoerd in reeks %d")
	set(language.Dutch, msgTwistCap, "Element %s mag maximaal %d keer uitgevoerd worden")
	set(language.Dutch, msgLastSlot, "Element %s mag een reeks enkel afsluiten bij de laatste herhaling")
	return b
}()

// SupportedLanguages lists the tags messages are translated into.
func SupportedLanguages() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// MatchLanguage resolves tag to the closest supported language.
func MatchLanguage(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// ParseLanguage resolves a BCP 47 string or Accept-Language header value.
// Anything unparseable resolves to English.
func ParseLanguage(s ...string) language.Tag {
	_, idx := language.MatchStrings(matcher, s...)
	return supported[idx]
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(MatchLanguage(tag), message.Catalog(translations))
}
