package engine

import "unicode"

// letterCycle is the length of the letter cycle: A..I map to 1..9, then J restarts at 1.
const letterCycle = 9

// LetterToNumeral converts the first character of s to its numeral.
// The mapping cycles every nine letters (A=1 ... I=9, J=1 ... R=9, S=1 ... Z=8).
// Anything that is not A-Z after uppercasing, including the empty string, yields 0.
func LetterToNumeral(s string) int {
	for _, r := range s {
		return runeNumeral(r)
	}
	return 0
}

func runeNumeral(r rune) int {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0
	}
	return int(r-'A')%letterCycle + 1
}

// ReduceToSingleDigit sums the decimal digits of n until a single digit remains.
//
// Any n <= 0 returns 1. This branch is checked first, so an empty name (sum 0)
// reduces to 1 and never to 9.
func ReduceToSingleDigit(n int) int {
	if n <= 0 {
		return 1
	}
	for n > 9 {
		n = digitSum(n)
	}
	if n == 0 {
		return 9
	}
	return n
}

// digitSum returns the sum of the decimal digits of a non-negative n.
func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// sumLetters adds the numerals of every character of s. Non-letters add 0.
func sumLetters(s string) int {
	sum := 0
	for _, r := range s {
		sum += runeNumeral(r)
	}
	return sum
}
