// Command cookiectl inspects and edits the cookie state of a cookiesync
// backend and issues requests through the cookie pipeline.
//
//	cookiectl --backend sqlite --sqlite-path ./cookies.db hosts
//	cookiectl header bbs.nga.cn
//	cookiectl fetch --uid 42 --account-cookie "ngaPassportUid=42" https://bbs.nga.cn/
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cookiectl: %s\n", err)
		os.Exit(1)
	}
}
