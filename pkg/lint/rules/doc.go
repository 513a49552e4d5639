// Package rules provides the built-in lint rules for solidhunter.
//
// # Categories
//
// Rules are contributed in five categories, merged into the registry in
// this order:
//
//   - best-practices: custom-errors, explicit-types, function-max-lines,
//     max-line-length, max-states-count, no-console, no-empty-block,
//     no-global-import, one-contract-per-file, payable-fallback, reason-string
//
//   - naming: const-name-snakecase, contract-name-camelcase,
//     event-name-camelcase, foundry-test-functions, func-name-mixedcase,
//     func-param-name-mixedcase, modifier-name-mixedcase,
//     named-parameters-mapping, private-vars-leading-underscore,
//     use-forbidden-name, var-name-mixedcase
//
//   - order: import-on-top, ordering, visibility-modifier-order
//
//   - miscellaneous: duplicate-contract-name
//
//   - security: avoid-tx-origin, func-visibility, no-inline-assembly,
//     not-rely-on-time, state-visibility
//
// Every rule reports WARNING by default except max-line-length, which
// reports ERROR.
//
// # Options
//
// A rule reads its options from the data field of its configuration entry.
// Data that cannot be decoded is logged and replaced by the default, so a
// typo in a rule set never disables linting.
//
// # Packs
//
// Packs are preset rule sets written by `solidhunter init --pack`:
// recommended, strict, relaxed and security.
package rules
