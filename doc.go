// Package listingqa provides data-quality checks for NYC short-term rental
// listing datasets:
//
//   - Schema: the header equals ExpectedColumns, order included
//   - Category: neighbourhood_group takes exactly the NeighbourhoodGroups values
//   - Geo boundary and price range: every row lies inside inclusive bounds
//   - Row count: MinRowCount < rows < MaxRowCount
//   - Distribution drift: the KL divergence of neighbourhood_group from a
//     reference dataset stays below a threshold
//
// Every check reports violations as Issues (JSON Pointer, code, message), the
// same error model the loaders in source/ use for undecodable cells.
//
// Layout:
//   - Keep the checks, the runner and the error model in the root package.
//   - Put loading under source/, versioned storage under artifact/, the cleaning
//     stage under clean/ and the CLI under cmd/listingqa.
//
// Typical usage:
//
//	rep := listingqa.Run(ctx, listingqa.DefaultChecks(), listingqa.Input{
//		Data:      data,
//		Reference: ref,
//		Params:    listingqa.Params{MinPrice: 10, MaxPrice: 350, KLThreshold: 0.2},
//	}, listingqa.RunOpt{Logger: logger})
//	if !rep.Passed() {
//		fmt.Println(rep.Issues())
//	}
package listingqa
