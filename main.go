package main

import "hotel-booking/cmd"

func main() {
	cmd.Execute()
}
