package mcpserver

// PostFormatContract describes the file convention every post follows.
const PostFormatContract = `# Blogon Post Format

Posts live directly in the posts directory. Each post is either a single
Markdown file or a directory holding a ` + "`" + `post.md` + "`" + ` file.

## Naming

- The name starts with at least four digits, an underscore, then a short
  lowercase name: ` + "`" + `0001_hello_world.md` + "`" + ` or ` + "`" + `0002_photo_essay/post.md` + "`" + `.
- The slug is derived from the name: lowercase, accents folded to ASCII,
  every run of other characters turned into a single hyphen. The two names
  above become ` + "`" + `0001-hello-world` + "`" + ` and ` + "`" + `0002-photo-essay` + "`" + `.
- Anything else in the directory is ignored.

## Front matter

` + "```" + `markdown
---
title: Hello, world          # REQUIRED
date: 2024-06-01             # OPTIONAL - YYYY-MM-DD; absent or null makes a draft
tags: [go, blogging]         # OPTIONAL - list, order kept
---

Markdown body.
` + "```" + `

1. The block opens with the first line made of exactly ` + "`" + `---` + "`" + ` (trailing spaces
   allowed) and closes with the next such line. Put it at the top of the file.
2. Drafts are listed after dated posts outside production and hidden in production.
3. The file is UTF-8.

## Body

- Headings are numbered by section (` + "`" + `1.2.0.1` + "`" + `) and get a permalink anchor.
- Tables, footnotes, strikethrough and task lists are supported; raw HTML is passed through.
`
