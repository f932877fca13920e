// Package agentdesk provides a Go client for the agentdesk settings API.
//
// The client mirrors every settings route: the full document, each of the
// three sections, reset, and the enum option lists.
//
//	client, _ := agentdesk.New("http://localhost:8080", agentdesk.WithAPIKey(key))
//	ap, _ := client.AgentParameters(ctx)
//	ap.MaxTokensPerResponse = 256
//	if _, err := client.ReplaceAgentParameters(ctx, ap); errors.Is(err, agentdesk.ErrValidation) {
//	    var apiErr *agentdesk.APIError
//	    errors.As(err, &apiErr)
//	    fmt.Println(apiErr.Field, apiErr.Allowed)
//	}
//
// Requests that fail on the network or with a 5xx status are retried.
// Every settings write is a full replace, so retrying is safe.
package agentdesk
