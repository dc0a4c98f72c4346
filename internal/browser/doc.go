// Package browser turns a URL into the fully rendered HTML of that page.
//
// Two engines are provided:
//   - RodRenderer drives a headless Chrome through go-rod with the stealth
//     evasions applied, waits for the load event and a settle period, then
//     serialises document.documentElement.outerHTML. This is the default
//     because the listing pages are built client-side.
//   - HTTPRenderer issues a plain GET. It is only useful for sites that ship
//     their markup server-side, and for tests.
//
// Every failure is wrapped around ErrRenderFailure so callers can tell a
// render problem from a parse problem with errors.Is.
//
// A Renderer owns a session. Callers must Close it exactly once when the run
// ends, whether the run succeeded or not.
package browser
