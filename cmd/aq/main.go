package main

import "github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/cmd/aq/root"

func main() {
	root.Execute()
}
