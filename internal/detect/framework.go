package detect

// Framework is the front-end or server framework detected in a project,
// along with the build output directories its tooling should ignore.
type Framework struct {
	Key            string
	Name           string
	Icon           string
	IgnorePatterns []string
}

var (
	// UnknownFramework is reported when there is no readable manifest.
	UnknownFramework = Framework{Key: "unknown", Name: "unknown", Icon: "❔"}

	// NodeFramework is the fallback for a manifest that matches no rule.
	NodeFramework = Framework{Key: "node", Name: "Node.js", Icon: "📦", IgnorePatterns: []string{"dist", "build"}}
)

type frameworkRule struct {
	framework Framework
	match     func(m Manifest) bool
}

func has(dep string) func(Manifest) bool {
	return func(m Manifest) bool { return m.Has(dep) }
}

func hasWithout(dep string, without ...string) func(Manifest) bool {
	return func(m Manifest) bool {
		if !m.Has(dep) {
			return false
		}
		for _, w := range without {
			if m.Has(w) {
				return false
			}
		}
		return true
	}
}

// frameworkRules is evaluated top to bottom. More specific frameworks come
// before the base they build on (Expo before React Native, Nuxt before Vue).
var frameworkRules = []frameworkRule{
	{Framework{"react-native-expo", "Expo (React Native)", "📱", []string{".expo", "dist", "node_modules", ".expo-shared"}}, has("expo")},
	{Framework{"react-native", "React Native", "📱", []string{"android/app/build", "ios/build", "node_modules"}}, hasWithout("react-native", "expo")},
	{Framework{"next", "Next.js", "▲", []string{".next", "out", ".vercel"}}, has("next")},
	{Framework{"remix", "Remix", "💿", []string{"build", ".cache", "public/build"}}, has("@remix-run/react")},
	{Framework{"gatsby", "Gatsby", "💜", []string{".cache", "public"}}, has("gatsby")},
	{Framework{"nuxt", "Nuxt", "💚", []string{".nuxt", "dist", ".output"}}, has("nuxt")},
	{Framework{"vue", "Vue", "💚", []string{"dist"}}, hasWithout("vue", "nuxt")},
	{Framework{"angular", "Angular", "🅰️", []string{"dist", ".angular"}}, has("@angular/core")},
	{Framework{"sveltekit", "SvelteKit", "🔥", []string{".svelte-kit", "build"}}, has("@sveltejs/kit")},
	{Framework{"svelte", "Svelte", "🔥", []string{"build", "dist"}}, hasWithout("svelte", "@sveltejs/kit")},
	{Framework{"astro", "Astro", "🚀", []string{"dist", ".astro"}}, has("astro")},
	{Framework{"solid", "SolidJS", "💙", []string{"dist"}}, has("solid-js")},
	{Framework{"qwik", "Qwik", "⚡", []string{"dist", "server", ".qwik"}}, has("@builder.io/qwik")},
	{Framework{"electron", "Electron", "⚛️", []string{"dist", "out", "build"}}, has("electron")},
	{Framework{"tauri", "Tauri", "🦀", []string{"src-tauri/target", "dist"}}, has("@tauri-apps/api")},
	{Framework{"react", "React", "⚛️", []string{"build", "dist"}}, hasWithout("react", "next", "gatsby", "react-native", "expo")},
	{Framework{"vite", "Vite", "⚡", []string{"dist"}}, hasWithout("vite", "astro", "@sveltejs/kit")},
	{Framework{"express", "Express", "🚂", []string{"dist", "build"}}, has("express")},
	{Framework{"fastify", "Fastify", "🚀", []string{"dist", "build"}}, has("fastify")},
	{Framework{"nest", "NestJS", "🐱", []string{"dist"}}, has("@nestjs/core")},
}

// MatchFramework returns the first framework whose rule matches m, or
// NodeFramework.
func MatchFramework(m Manifest) Framework {
	for _, rule := range frameworkRules {
		if rule.match(m) {
			return rule.framework.clone()
		}
	}
	return NodeFramework.clone()
}

// DetectFramework reads dir/package.json and matches it against the rules.
// A missing manifest yields UnknownFramework; an unparsable one an error.
func DetectFramework(dir string) (Framework, error) {
	if !ManifestExists(dir) {
		return UnknownFramework.clone(), nil
	}
	m, err := ReadManifest(dir)
	if err != nil {
		return UnknownFramework.clone(), err
	}
	return MatchFramework(m), nil
}

// FrameworkNames lists the detectable frameworks in priority order.
func FrameworkNames() []string {
	names := make([]string, len(frameworkRules))
	for i, rule := range frameworkRules {
		names[i] = rule.framework.Name
	}
	return names
}

func (f Framework) clone() Framework {
	if f.IgnorePatterns != nil {
		f.IgnorePatterns = append([]string(nil), f.IgnorePatterns...)
	}
	return f
}
