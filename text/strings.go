package text

import (
	"strconv"
	"strings"
	"unicode"
)

func UpperFirst(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return ""
	}

	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func RemoveRedundantWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

var (
	underTwenty = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tens = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

// CardinalNoun spells out n in words for 0 to 199 and uses digits otherwise,
// e.g. "eighty-two", "one hundred and four".
func CardinalNoun(n int) string {
	if n < 0 || n > 199 {
		return strconv.Itoa(n)
	}

	var noun string
	if n >= 100 {
		if n == 100 {
			return "one hundred"
		}
		noun = "one hundred and "
		n -= 100
	}

	if n < 20 {
		return noun + underTwenty[n]
	}

	noun += tens[n/10]
	if n%10 != 0 {
		noun += "-" + underTwenty[n%10]
	}
	return noun
}

func CardinalWithUnit(n int, singular string, plural string) string {
	if n == 1 {
		return "one " + singular
	}
	return CardinalNoun(n) + " " + plural
}

func FinishSentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	s = strings.TrimRight(s, ",:;")
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		return s + "."
	}
	return s
}

func FormatSentence(s string) string {
	return UpperFirst(FinishSentence(s))
}

func JoinSentences(ss ...string) string {
	var ret string
	for _, s := range ss {
		s = FormatSentence(s)
		if len(s) == 0 {
			continue
		}
		if ret != "" {
			ret += " "
		}
		ret += s
	}
	return ret
}

func MaybePossessiveSuffix(s string) string {
	if strings.HasSuffix(s, "s") {
		return s + "'"
	}
	return s + "'s"
}
