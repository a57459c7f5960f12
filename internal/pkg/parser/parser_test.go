package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	out, err := MarkdownToHTML("# 标题\n\n**粗体** 与 `code`")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id=`)
	assert.Contains(t, out, "<strong>粗体</strong>")
	assert.Contains(t, out, "<code>code</code>")
}

func TestMarkdownToHTML_Sanitizes(t *testing.T) {
	out, err := MarkdownToHTML("hi <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestSafeHTML(t *testing.T) {
	assert.Contains(t, string(SafeHTML("*斜体*")), "<em>斜体</em>")
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Tom & Jerry 你好", StripHTML("<p>Tom &amp; Jerry</p>\n\n<b>你好</b>"))
	assert.Equal(t, "", StripHTML(""))
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "标题 正文内容", Description("# 标题\n\n正文内容", 20))
	assert.Equal(t, "标题...", Description("# 标题\n\n正文内容", 2))
}
