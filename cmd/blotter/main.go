// Package main provides the entry point for the blotter CLI.
//
// blotter crawls a police news-release listing, keeps the crime-related
// articles and writes the suspects it finds (name, age, charge, article,
// date) to a spreadsheet.
//
// Usage:
//
//	blotter scrape -n 20
//	blotter serve --addr 0.0.0.0:10000
//	blotter show crime_data_final.xlsx
//
// See --help for all available options.
package main

func main() {
	Execute()
}
