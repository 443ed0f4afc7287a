// Command logscan parses access-log style lines from stdin.
//
// Each line is expected to look like:
//
//	ip=203.0.113.7 user=alice latency=3.25 code=200
//
// Malformed lines are reported with the column where scanning stopped.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hucsmn/scan"
	"github.com/hucsmn/scan/scanutil"
)

func main() {
	var (
		addr    string
		user    string
		latency float64
		code    int
		keys    [4]string
	)

	compiler := scan.NewCompiler()
	if err := scanutil.RegisterAll(compiler); err != nil {
		fmt.Fprintln(os.Stderr, "logscan:", err)
		os.Exit(1)
	}
	line, err := compiler.Compile("$s$w=${ipv4}$s$w=$w$s$w=$f$s$w=$i$s$.",
		scan.Text(&keys[0]), scan.Text(&addr),
		scan.Text(&keys[1]), scan.Text(&user),
		scan.Text(&keys[2]), scan.Float(&latency),
		scan.Text(&keys[3]), scan.Int(&code))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logscan:", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		pos := 0
		if !line.MatchAt(in.Text(), &pos) {
			fmt.Printf("malformed line, scanning stopped at column %d: %q\n",
				scan.Locate(in.Text(), pos).Column, in.Text())
			continue
		}
		fmt.Printf("%s=%s %s=%s %s=%g %s=%d\n",
			keys[0], addr, keys[1], user, keys[2], latency, keys[3], code)
	}
	if err := in.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "logscan:", err)
		os.Exit(1)
	}
}
