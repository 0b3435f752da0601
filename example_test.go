package visits_test

import (
	"context"
	"fmt"
	"time"

	"github.com/ryhazerus/visits"
	"github.com/ryhazerus/visits/store"
)

func ExampleNew() {
	svc := visits.New(store.NewMemoryStore(), visits.WithTTL(time.Minute))
	defer svc.Close()

	res, _ := svc.IncrementVisit(context.Background(), "home")
	fmt.Println(res.Visits, res.ServedVia)
	// Output: 1 redis
}

func ExampleService_VisitCount() {
	svc := visits.New(store.NewMemoryStore(), visits.WithTTL(time.Minute))
	defer svc.Close()

	ctx := context.Background()
	svc.IncrementVisit(ctx, "home")
	svc.IncrementVisit(ctx, "home")

	res, _ := svc.VisitCount(ctx, "home")
	fmt.Println(res.Visits, res.ServedVia)

	res, _ = svc.VisitCount(ctx, "pricing")
	fmt.Println(res.Visits, res.ServedVia)
	// Output:
	// 2 in_memory
	// 0 redis
}
