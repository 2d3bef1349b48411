package markdown

// DefaultGuide is the document loaded on first start, before anything
// has been persisted locally.
const DefaultGuide = `# Welcome to Markpad

Start typing on the left and watch the preview update on the right.

## Formatting basics

- **Bold** with ` + "`**double asterisks**`" + `
- *Italic* with ` + "`*single asterisks*`" + `
- ~~Strikethrough~~ with ` + "`~~tildes~~`" + `
- Inline code with ` + "`backticks`" + `

## Blocks

> Blockquotes start with ` + "`>`" + `

` + "```" + `
Code blocks are fenced with triple backticks.
` + "```" + `

## Links and images

[Links](https://example.com) and images use the usual markdown syntax.

| Tables | Work |
| ------ | ---- |
| too    | yes  |

---

Your text is saved locally as you type. Use the save action to push a
copy to the document store.
`
