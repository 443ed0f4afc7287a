package scan

import "fmt"

func ExampleScanf() {
	var day, month, year int
	ok, _ := Scanf("25.03.2019", "$i.$i.$i", Int(&day), Int(&month), Int(&year))
	fmt.Println(ok, day, month, year)
	// Output: true 25 3 2019
}

func ExampleMatch() {
	var word []byte
	letter := func(input string, pos int) { word = append(word, input[pos]) }

	pos := 0
	ok := Match("hello world", &pos, Bind(Many1(Range('a', 'z')), letter))
	fmt.Println(ok, string(word), pos)
	// Output: true hello 5
}

func ExampleCompiler_Register() {
	c := NewCompiler()
	c.Register("twice", func(input string, out *string, start int, args ...any) int {
		n := len(input) - start
		if n%2 != 0 || input[start:start+n/2] != input[start+n/2:] {
			return 0
		}
		*out = input[start : start+n/2]
		return n
	})

	var half string
	p, _ := c.Compile("${twice}", Text(&half))
	fmt.Println(p.Match("abcabc"), half)
	// Output: true abc
}
