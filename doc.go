// Package leadscope embeds the contact search engine in a Go program
// without the HTTP layer.
//
// The client opens its own read-only Postgres pool; campaign search and
// the query assistant are optional.
//
//	client, _ := leadscope.New(leadscope.WithPostgres(dsn))
//	defer client.Close()
//
//	// Free text, read into filters by the analyzer
//	res, _ := client.Search(ctx, "CEOs at Acme in Texas", 20)
//
//	// Structured, built fluently
//	page, _ := client.Find().
//	    Where("industry", leadscope.Contains, "fintech").
//	    Between("employees", 50, 500).
//	    AnyOf(
//	        leadscope.Cond("state", leadscope.Equals, "CA"),
//	        leadscope.Cond("state", leadscope.Equals, "NY"),
//	    ).
//	    SortBy("lead_score", "desc").
//	    Do(ctx)
//
//	// CSV of the same query
//	n, _ := client.Find().Global("acme").Export(ctx, w)
package leadscope
