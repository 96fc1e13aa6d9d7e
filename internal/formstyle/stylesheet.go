package formstyle

// Blocks spliced into the embedded <style> of each form. Every block carries
// its own four-space indent so it lines up with the surrounding rules.

const rootVariables = `    :root {
      --bg-primary: #191C24;
      --bg-secondary: #111111;
      --bg-tertiary: #1a1a1a;
      --text-primary: #ffffff;
      --text-secondary: #cccccc;
      --text-muted: #888;
      --accent-color: #6366f1;
      --accent-hover: #5855eb;
      --border-color: #333;
      --success-color: #10b981;
      --error-color: #ef4444;
      --required-asterisk: #a855f7;
      --spacing-xs: 0.5rem;
      --spacing-sm: 1rem;
      --spacing-md: 1.5rem;
      --spacing-lg: 2rem;
      --spacing-xl: 3rem;
    }
` + "    \n"

const requiredAsteriskRule = `    label .required-asterisk {
      color: var(--required-asterisk);
      font-weight: 600;
      margin-left: 2px;
    }
`

const formContainerRule = `    .form-container {
      background: var(--bg-secondary);
      border: 1px solid var(--border-color);
      border-radius: 12px;
      padding: 32px;
      scroll-margin-top: var(--spacing-lg);
      box-shadow: 0 4px 20px rgba(0, 0, 0, 0.3);
      backdrop-filter: blur(10px);
    }`

const inputRule = `    input, textarea {
      width: 100%;
      padding: 14px 16px;
      border: 1px solid #333;
      border-radius: 10px;
      font-size: 14px;
      font-family: inherit;
      box-sizing: border-box;
      background: #1a1a1a;
      color: #ffffff;
      transition: all 0.2s ease;
    }`

const inputFocusRule = `    input:focus, textarea:focus {
      border-color: var(--accent-color);
      outline: none;
      box-shadow: 0 0 0 3px rgba(99, 102, 241, 0.15);
      background: #222;
    }`

const inputHoverRule = `    input:hover, textarea:hover {
      border-color: #444;
      background: #1f1f1f;
    }
`

const submitButtonRule = `    .submit-btn {
      width: 100%;
      padding: 16px;
      background: linear-gradient(135deg, var(--accent-color), var(--accent-hover));
      color: white;
      border: none;
      border-radius: 10px;
      font-size: 16px;
      cursor: pointer;
      margin-top: 1.5rem;
      font-weight: 600;
      transition: all 0.2s ease;
      box-shadow: 0 4px 15px rgba(99, 102, 241, 0.3);
    }`

const submitButtonHoverRule = `    .submit-btn:hover {
      background: linear-gradient(135deg, var(--accent-hover), var(--accent-color));
      transform: translateY(-2px);
      box-shadow: 0 6px 20px rgba(99, 102, 241, 0.4);
    }`

const submitButtonActiveRule = `    .submit-btn:active {
      transform: translateY(0);
    }
`

const questionSectionRule = `    .question-section {
      margin-top: 2.5rem;
      padding: 24px;
      background: rgba(255, 255, 255, 0.02);
      border-radius: 10px;
      border: 1px solid rgba(255, 255, 255, 0.05);
    }`

const asteriskSpan = `<span class="required-asterisk">*</span>`
