// File: /main.go
package main

import "photogram-api/cmd"

func main() {
	cmd.Execute()
}
