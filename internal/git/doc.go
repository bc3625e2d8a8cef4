// Package git clones the external dependency and reports its commit.
//
// Two backends implement Client. ExecClient delegates to the system git
// binary, streaming its output so users see git's own progress and error
// text, and leaving authentication to the user's git configuration.
// GoGitClient clones in-process with go-git for hosts without git installed.
//
// Example usage:
//
//	client := git.NewExecClient(logger)
//	if err := git.CheckMinVersion(ctx); err != nil {
//	    return err
//	}
//	if err := client.Clone(ctx, url, "/path/to/external", "v2", 1); err != nil {
//	    return err
//	}
//	if err := client.LogLast(ctx, "/path/to/external"); err != nil {
//	    return err
//	}
package git
