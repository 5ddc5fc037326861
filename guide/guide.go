// Package guide holds the per-language advice on when to use each
// clustering method.
package guide

import (
	"sort"
	"strings"
)

const DefaultLanguage = "english"

var guides = map[string]map[string]string{
	"english": {
		"kmeans":        "KMeans is best suited for spherical clusters with similar sizes and requires the number of clusters as input.",
		"dbscan":        "DBSCAN is ideal for detecting arbitrary-shaped clusters and noise, without needing the number of clusters.",
		"hierarchical":  "Hierarchical clustering is suitable for hierarchical structures, with dendrograms to visualize relationships.",
		"meanshift":     "MeanShift is good for finding clusters with a high-density region without needing the number of clusters.",
		"agglomerative": "Agglomerative clustering works well for building a hierarchy of clusters using a bottom-up approach.",
	},
	"farsi": {
		"kmeans":        "KMeans برای خوشه‌های کروی با اندازه‌های مشابه و نیازمند تعداد خوشه‌ها به عنوان ورودی مناسب است.",
		"dbscan":        "DBSCAN برای شناسایی خوشه‌های با اشکال دلخواه و نویز، بدون نیاز به تعداد خوشه‌ها ایده‌آل است.",
		"hierarchical":  "خوشه‌بندی سلسله‌مراتبی برای ساختارهای سلسله‌مراتبی مناسب است و دندروگرام‌ها روابط را نمایش می‌دهند.",
		"meanshift":     "MeanShift برای یافتن خوشه‌های با ناحیه تراکم بالا، بدون نیاز به تعداد خوشه‌ها خوب است.",
		"agglomerative": "خوشه‌بندی Agglomerative برای ساخت سلسله‌مراتب خوشه‌ها از پایین به بالا مناسب است.",
	},
	"arabic": {
		"kmeans":        "KMeans مناسب لتصنيف المجموعات الكروية المتشابهة الحجم ويتطلب إدخال عدد المجموعات.",
		"dbscan":        "DBSCAN مثالي لاكتشاف المجموعات ذات الأشكال التعسفية والضوضاء، دون الحاجة إلى عدد المجموعات.",
		"hierarchical":  "التصنيف الهرمي مناسب للهياكل الهرمية، ويعرض العلاقات عبر المخططات الشجرية.",
		"meanshift":     "MeanShift جيد لتحديد المجموعات ذات الكثافة العالية دون الحاجة إلى عدد المجموعات.",
		"agglomerative": "التصنيف التجميعي مناسب لبناء تسلسل هرمي من المجموعات باستخدام نهج من الأسفل إلى الأعلى.",
	},
	"french": {
		"kmeans":        "KMeans est idéal pour les clusters sphériques de taille similaire et nécessite le nombre de clusters en entrée.",
		"dbscan":        "DBSCAN est idéal pour détecter des clusters de formes arbitraires et le bruit, sans nécessiter le nombre de clusters.",
		"hierarchical":  "Le clustering hiérarchique est adapté aux structures hiérarchiques et utilise des dendrogrammes pour visualiser les relations.",
		"meanshift":     "MeanShift est bien adapté pour trouver des clusters avec une région de forte densité sans nécessiter le nombre de clusters.",
		"agglomerative": "Le clustering agglomératif fonctionne bien pour construire une hiérarchie de clusters avec une approche ascendante.",
	},
}

// Lookup returns a copy of the guide for language, falling back to
// english for anything unrecognized.
func Lookup(language string) map[string]string {
	g, ok := guides[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		g = guides[DefaultLanguage]
	}
	out := make(map[string]string, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// Supported reports whether language has its own guide.
func Supported(language string) bool {
	_, ok := guides[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

func Languages() []string {
	out := make([]string, 0, len(guides))
	for l := range guides {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
