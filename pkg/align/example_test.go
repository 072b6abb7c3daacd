package align_test

import (
	"fmt"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/dataset"
)

func ExampleOrder() {
	records := []dataset.Record{
		{Key: "nurse", Group: dataset.White, Source: "GPT", Value: dataset.Some(-8)},
		{Key: "pilot", Group: dataset.White, Source: "GPT", Value: dataset.Some(12)},
		{Key: "chef", Group: dataset.White, Source: "GPT", Value: dataset.Some(3)},
	}
	keys, _ := align.Intersect(records)
	fmt.Println(align.Order(keys, records, dataset.White, align.Descending))
	fmt.Println(align.Order(keys, records, dataset.White, align.Ascending))
	// Output:
	// [pilot chef nurse]
	// [nurse chef pilot]
}

func ExampleNiceLabel() {
	fmt.Println(align.NiceLabel("customer_service_representative"))
	fmt.Println(align.NiceLabel("labTech"))
	// Output:
	// Customer Service Representative
	// Lab Tech
}
