// Package http exposes the paragraphs tabs, carousel and mount endpoints on
// a net/http ServeMux.
//
// Routes mount under the configured base path:
//   - Field rendering: /paragraphs/{entity_type}/{entity_id}/{field},
//     /paragraphs/{entity_type}/{entity_id}/{field}/search
//   - Add form: /paragraphs/add/{paragraph_type}/{entity_type}/{entity_field}/{entity_id}
//   - Item operations: /paragraphs/{id}, /paragraphs/{id}/edit,
//     /paragraphs/{id}/duplicate, /paragraphs/{id}/delete
//   - Tab preference: /tabs/preference
//   - Carousel admin: /admin/carousel/settings, /admin/carousel/items,
//     /admin/carousel/items/{id}
//   - Carousel block: /carousel/block
//   - Assets: /assets/paragraphs-tabs-bootstrap.js, /app
//
// Host applications can register handlers on their own mux/router as needed.
package http
