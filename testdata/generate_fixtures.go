//go:build ignore

// This program generates test fixture files for pivotkit.
package main

import (
	"fmt"
	"os"

	"github.com/klytics/pivotkit/internal/dataset"
	"github.com/klytics/pivotkit/internal/formats/xlsx"
)

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generateCSV(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.csv: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateXlsx() error {
	ds := dataset.Sample()

	b := xlsx.NewBuilder()
	defer b.Close()

	if _, err := b.AddSheet("Raw Data", ds.Grid()); err != nil {
		return err
	}

	return b.SaveAs("testdata/sample.xlsx")
}

func generateCSV() error {
	ds := dataset.SampleN(20)

	f, err := os.Create("testdata/sample.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	for _, row := range ds.Grid() {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(f, ",")
			}
			fmt.Fprint(f, cell)
		}
		fmt.Fprintln(f)
	}
	return nil
}
