package cmd

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/achilleasa/kdtrace/asset/reader"
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

type benchResult struct {
	method    string
	buildTime time.Duration
	stats     *kdtree.Stats
	traceTime time.Duration
	hits      int
	agreed    int
}

// Generate rays that start around the mesh bbox and aim at random points
// inside it.
func benchRays(box geometry.AABB, count int, seed int64) []types.Ray {
	rng := rand.New(rand.NewSource(seed))
	extent := box.Extent()
	randomPoint := func(scale float32) types.Vec3 {
		center := box.Center()
		return types.Vec3{
			center[0] + scale*extent[0]*(rng.Float32()-0.5),
			center[1] + scale*extent[1]*(rng.Float32()-0.5),
			center[2] + scale*extent[2]*(rng.Float32()-0.5),
		}
	}

	rays := make([]types.Ray, 0, count)
	for len(rays) < count {
		origin := randomPoint(2)
		dir := randomPoint(1).Sub(origin)
		if dir.Len() == 0 {
			continue
		}
		rays = append(rays, types.NewRay(origin, dir.Normalize()))
	}
	return rays
}

// Compare naive and SAH tree traversal against a linear scan.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() < 1 {
		return errMissingMeshArg
	}

	mesh, err := reader.ReadMesh(ctx.Args().First())
	if err != nil {
		return err
	}

	rays := benchRays(mesh.BBox(), ctx.Int("rays"), ctx.Int64("seed"))

	// Linear scan results are the reference
	start := time.Now()
	expHits := make([]kdtree.Hit, len(rays))
	expOk := make([]bool, len(rays))
	linear := benchResult{method: "linear scan"}
	for i, r := range rays {
		expHits[i], expOk[i] = kdtree.LinearScan(mesh.Triangles(), r)
		if expOk[i] {
			linear.hits++
		}
	}
	linear.traceTime = time.Since(start)
	linear.agreed = len(rays)

	results := []benchResult{linear}
	for _, strategy := range []kdtree.Strategy{kdtree.NaiveSpatialMedian, kdtree.SurfaceAreaHeuristic} {
		tree, err := kdtree.Build(mesh.Triangles(), kdtree.DefaultOptions(strategy))
		if err != nil {
			return err
		}

		stats := tree.Stats()
		res := benchResult{
			method:    strategy.String(),
			buildTime: stats.BuildTime,
			stats:     &stats,
		}

		start = time.Now()
		for i, r := range rays {
			hit, ok := tree.Trace(r)
			if ok {
				res.hits++
			}
			if ok == expOk[i] && (!ok || hit.T == expHits[i].T) {
				res.agreed++
			}
		}
		res.traceTime = time.Since(start)
		results = append(results, res)
	}

	displayBenchResults(mesh.Name, len(rays), results)
	return nil
}

func displayBenchResults(meshName string, numRays int, results []benchResult) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Method", "Build time", "Nodes", "Max depth", "Trace time", "MRays/s", "Hits", "Agreement"})
	for _, res := range results {
		var buildTime, nodes, maxDepth = "-", "-", "-"
		if res.stats != nil {
			buildTime = res.buildTime.String()
			nodes = fmt.Sprintf("%d", res.stats.Nodes)
			maxDepth = fmt.Sprintf("%d", res.stats.MaxDepth)
		}

		var mraysPerSec float64
		if secs := res.traceTime.Seconds(); secs > 0 {
			mraysPerSec = float64(numRays) / secs / 1e6
		}

		table.Append([]string{
			res.method,
			buildTime,
			nodes,
			maxDepth,
			res.traceTime.String(),
			fmt.Sprintf("%.3f", mraysPerSec),
			fmt.Sprintf("%d", res.hits),
			fmt.Sprintf("%d/%d", res.agreed, numRays),
		})
	}
	table.Render()

	logger.Noticef("traced %d rays against %q\n%s", numRays, meshName, buf.String())
}
