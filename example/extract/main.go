// Command extract prints every IPv4 address found on stdin, one per line.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hucsmn/scan"
	"github.com/hucsmn/scan/scanutil"
)

func main() {
	var addr string
	ip := scan.Grammar(scan.Call(scanutil.Into(scanutil.IPv4, &addr)))

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		for pos := 0; pos < len(line); {
			if ip.MatchAt(line, &pos) {
				fmt.Println(addr)
				continue
			}
			pos++
		}
	}
	if err := in.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "extract:", err)
		os.Exit(1)
	}
}
