package main

import "github.com/KaramelBytes/ndvistat/cmd"

func main() {
	cmd.Execute()
}
