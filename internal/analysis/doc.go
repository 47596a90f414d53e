// Package analysis runs the listing pipeline: identify the product,
// research live competitor listings, generate marketplace copy, and
// summarize market insights. Grounding is best effort; when web search
// yields nothing the pipeline degrades to ungrounded output instead of
// failing.
package analysis
