package mcpserver

// KindsGuide documents the apply_edit kinds for LLM clients.
const KindsGuide = `# designsync edit kinds

Every edit names a file relative to the project root. Only the bytes of the
target value change; the rest of the file is preserved exactly.

| kind | identifier | value |
|---|---|---|
| css-variable | custom property, e.g. --primary | CSS value |
| sass-variable | variable, e.g. $card-shadow | Sass value without !default |
| design-token | dotted path, e.g. color.brand | JSON value or plain string |
| shadow-token | dotted path, e.g. shadow.md | raw box-shadow, e.g. 0 1px 2px #0000001a |
| class | class to replace on the element | new class, empty to remove |
| class-property | a class on the element (or pass eid) | CSS value; set property |
| component-class | the whole class string | new class string |

Options:

- selector: the block a css-variable lives in (default :root, use .dark for dark mode).
- create: insert a missing variable, token or class instead of failing.
- line, context: disambiguate elements and class strings that occur more than once.

Errors:

- not found: the target does not exist (use create, or check the name).
- ambiguous: the target occurs more than once; pass line or context.
- unparsable: the value cannot be written safely, e.g. it contains ";" or "}".
- shadow-token drops inset flags; the response sets strippedInset.
`
