package controllers

import (
	"bufio"
	"fmt"
	"io"
	"snappy/internal/providers"
	"snappy/internal/services"
	"strings"
)

const reviewPrompt = "accept? [y]es/[n]o/[s]kip: "

// ReviewResult counts the decisions taken during one review session.
type ReviewResult struct {
	Accepted int
	Rejected int
	Skipped  int
}

type ReviewController struct {
	review services.ReviewServiceInterface
	logger providers.Logger
}

func NewReviewController(review services.ReviewServiceInterface, logger providers.Logger) *ReviewController {
	return &ReviewController{
		review: review,
		logger: logger,
	}
}

// Review shows every pending snapshot next to the accepted one and asks what
// to do with it. With acceptAll nothing is read from in. Once in is exhausted
// the remaining snapshots are skipped.
func (rc *ReviewController) Review(in io.Reader, out io.Writer, acceptAll bool) (ReviewResult, error) {
	var result ReviewResult

	pending, err := rc.review.Pending()
	if err != nil {
		return result, err
	}
	if len(pending) == 0 {
		fmt.Fprintln(out, "No snaps to review.")
		return result, nil
	}

	scanner := bufio.NewScanner(in)
	exhausted := false

	for _, p := range pending {
		diff, err := rc.review.Diff(p)
		if err != nil {
			return result, fmt.Errorf("load %s: %w", p.Path, err)
		}
		writeDiff(out, diff)

		decision := "y"
		if !acceptAll {
			decision = "s"
			if !exhausted {
				decision, exhausted = ask(scanner, out)
			}
		}

		switch decision {
		case "y":
			if err = rc.review.Accept(p); err != nil {
				return result, err
			}
			result.Accepted++
		case "n":
			if err = rc.review.Reject(p); err != nil {
				return result, err
			}
			result.Rejected++
		default:
			rc.logger.Debugf(providers.TypeReview, "Skipped %s", p.Path)
			result.Skipped++
		}
	}

	fmt.Fprintf(out, "%d accepted, %d rejected, %d skipped\n", result.Accepted, result.Rejected, result.Skipped)
	return result, nil
}

func writeDiff(out io.Writer, diff *services.SnapDiff) {
	fmt.Fprintf(out, "%s/%s\n", diff.Pending.Test, diff.Pending.Snap)
	fmt.Fprintln(out, "--- accepted")
	if old, ok := diff.OldContent(); ok {
		fmt.Fprintln(out, old)
	} else {
		fmt.Fprintln(out, "(none)")
	}
	fmt.Fprintln(out, "+++ pending")
	fmt.Fprintln(out, diff.NewContent())
}

// ask prompts until it reads y, n or s. It reports true when input ran out.
func ask(scanner *bufio.Scanner, out io.Writer) (string, bool) {
	for {
		fmt.Fprint(out, reviewPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return "s", true
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return "y", false
		case "n", "no":
			return "n", false
		case "s", "skip":
			return "s", false
		}
	}
}
