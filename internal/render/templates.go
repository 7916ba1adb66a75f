package render

import (
	"fmt"
	"html/template"
	"time"
)

var templateFuncs = template.FuncMap{
	"currency": func(v float64) string {
		return fmt.Sprintf("$%.0f", v)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Meta }}
<title>{{ .Meta.Title }}</title>
<meta name="description" content="{{ .Meta.Description }}">
<meta property="og:type" content="website">
<meta property="og:title" content="{{ .Meta.Title }}">
<meta property="og:description" content="{{ .Meta.Description }}">
<meta property="og:url" content="{{ .Meta.URL }}">
{{- if .Meta.Image }}
<meta property="og:image" content="{{ .Meta.Image }}">
<meta property="og:image:alt" content="{{ .Meta.ImageAlt }}">
{{- end }}
<script type="application/ld+json">{{ .Meta.StructuredData }}</script>
{{- else }}
<title>{{ .Title }} (preview)</title>
<meta name="robots" content="noindex">
{{- end }}
</head>
<body>
{{- if or .Title .Description }}
<header class="page-header">
<h1>{{ .Title }}</h1>
{{- if .Description }}
<p>{{ .Description }}</p>
{{- end }}
</header>
{{- end }}
<main>
{{- range .Blocks }}
{{- if .Banner }}
<section class="block banner">
{{- if .Banner.Placeholder }}
<div class="banner-placeholder">No image set</div>
{{- else if .Banner.Link }}
<a href="{{ .Banner.Link }}"><img src="{{ .Banner.Image }}" alt="{{ .Banner.Alt }}"></a>
{{- else }}
<img src="{{ .Banner.Image }}" alt="{{ .Banner.Alt }}">
{{- end }}
</section>
{{- end }}
{{- if .Products }}
<section class="block product-recommendation">
{{- if .Products.Title }}
<h2>{{ .Products.Title }}</h2>
{{- end }}
{{- if .Products.Empty }}
<p class="empty-state">No products selected</p>
{{- else }}
<div class="product-grid">
{{- range .Products.Products }}
{{ template "productCard" . }}
{{- end }}
</div>
{{- end }}
</section>
{{- end }}
{{- if .FlashSale }}
<section class="block flash-sale">
<div class="flash-sale-header">
{{- if .FlashSale.Title }}
<h2>{{ .FlashSale.Title }}</h2>
{{- end }}
<p>{{ date .FlashSale.StartTime }} &ndash; {{ date .FlashSale.EndTime }}</p>
{{- if .FlashSale.Active }}
<span class="badge badge-active">Live now</span>
{{- else }}
<span class="badge badge-inactive">Ended</span>
{{- end }}
</div>
{{- if .FlashSale.Empty }}
<p class="empty-state">No products selected</p>
{{- else }}
<div class="product-grid">
{{- range .FlashSale.Products }}
{{ template "productCard" . }}
{{- end }}
</div>
{{- end }}
</section>
{{- end }}
{{- if .HTML }}
<section class="block html-block">
{{ .HTML }}
</section>
{{- end }}
{{- end }}
</main>
</body>
</html>
{{- define "productCard" }}
<article class="product-card">
{{- if .Image }}
<img src="{{ .Image }}" alt="{{ .Title }}">
{{- end }}
{{- if .FlashSale }}
<span class="badge badge-sale">Flash deal</span>
{{- end }}
<h3>{{ .Title }}</h3>
<p class="price">{{ currency .Price }}
{{- if .OriginalPrice }} <del>{{ currency .OriginalPrice }}</del>{{ end -}}
</p>
{{- if .Rating }}
<p class="rating">&#9733; {{ .Rating }}</p>
{{- end }}
</article>
{{- end }}`
