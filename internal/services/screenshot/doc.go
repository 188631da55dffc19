// Package screenshot captures page renderings for note attachments.
//
// Two backends exist: the remote backend asks the same Jina-style service
// the reader uses to render the page, and the local backend drives a
// headless Chrome instance through chromedp. Both return PNG bytes.
package screenshot
