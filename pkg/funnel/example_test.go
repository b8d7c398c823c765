package funnel_test

import (
	"fmt"
	"strings"

	"github.com/funnelgraph/funnelgraph/pkg/funnel"
	"github.com/funnelgraph/funnelgraph/pkg/render/svgsink"
)

func ExampleChart_Draw() {
	sink := svgsink.New(350, 400)
	chart := funnel.New(sink, 350, 400)

	err := chart.Draw([]funnel.Row{
		{Label: "Visitors", Value: 9500},
		{Label: "Signups", Value: 2500},
		{Label: "Customers", Value: 600},
	}, funnel.Options{IsCurved: true})
	if err != nil {
		panic(err)
	}

	doc := string(sink.Document())
	fmt.Println(strings.Contains(doc, "Visitors: 9,500"))
	// Output: true
}
