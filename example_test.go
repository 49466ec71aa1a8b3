package meshgeo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/meshgeo"
	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/mesh"
	"github.com/hupe1980/meshgeo/testutil"
)

// Example_march computes distances across a single triangle.
func Example_march() {
	ctx := context.Background()

	m, err := testutil.EquilateralTriangle(ctx)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := meshgeo.New(m)
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.MarchGeodesic(ctx, []geodesic.Seed{geodesic.VertexSeed(0)}, 5, geodesic.Options{})
	if err != nil {
		log.Fatal(err)
	}
	defer res.Release()

	for v := range 3 {
		fmt.Printf("vertex %d: %.3f\n", v, res.Distance(mesh.VertexID(v)))
	}
	// Output:
	// vertex 0: 0.000
	// vertex 1: 1.000
	// vertex 2: 1.000
}

// Example_sphere collects the faces around the centre of a small grid.
func Example_sphere() {
	ctx := context.Background()

	m, err := testutil.Grid(ctx, 3, 3, 1.0, testutil.UnionJack)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := meshgeo.New(m)
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.QuerySphere(ctx, testutil.GridIndex(3, 1, 1), 1.0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("faces:", len(res.Faces))
	// Output: faces: 8
}
